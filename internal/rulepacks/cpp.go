package rulepacks

import "github.com/codewithboateng/rulebench/internal/model"

func init() {
	for _, m := range []RuleMeta{
		{Code: "MISRA-CPP-5-0-5", Title: "There shall be no implicit floating-integral conversions", Severity: "required"},
		{Code: "MISRA-CPP-6-4-2", Title: "All if ... else if constructs shall be terminated with an else clause", Severity: "required"},
		{Code: "MISRA-CPP-18-4-1", Title: "Dynamic heap memory allocation shall not be used", Severity: "required"},
	} {
		m.Standard = model.MISRACPP
		m.Docs = "https://misra.org.uk/"
		Register(m)
	}

	for _, m := range []RuleMeta{
		{Code: "AUTOSAR-CPP-A2-10-1", Title: "An identifier declared in an inner scope shall not hide an identifier declared in an outer scope", Severity: "required"},
		{Code: "AUTOSAR-CPP-A5-1-1", Title: "Literal values shall not be used apart from type initialization", Severity: "required"},
		{Code: "AUTOSAR-CPP-A18-5-1", Title: "Functions malloc, calloc, realloc and free shall not be used", Severity: "required"},
	} {
		m.Standard = model.AUTOSARCPP
		m.Docs = "https://www.autosar.org/"
		Register(m)
	}
}
