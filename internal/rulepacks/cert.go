package rulepacks

import "github.com/codewithboateng/rulebench/internal/model"

func init() {
	for _, m := range []RuleMeta{
		{Code: "CERT-C-ARR30-C", Title: "Do not form or use out-of-bounds pointers or array subscripts", Severity: "mandatory"},
		{Code: "CERT-C-EXP33-C", Title: "Do not read uninitialized memory", Severity: "mandatory"},
		{Code: "CERT-C-MEM30-C", Title: "Do not access freed memory", Severity: "mandatory"},
		{Code: "CERT-C-STR31-C", Title: "Guarantee that storage for strings has sufficient space", Severity: "mandatory"},
		{Code: "CERT-C-ERR33-C", Title: "Detect and handle standard library errors", Severity: "required"},
	} {
		m.Standard = model.CERTC
		m.Docs = "https://wiki.sei.cmu.edu/confluence/display/c"
		Register(m)
	}

	for _, m := range []RuleMeta{
		{Code: "CERT-CPP-MEM50-CPP", Title: "Do not access freed memory", Severity: "mandatory"},
		{Code: "CERT-CPP-EXP54-CPP", Title: "Do not access an object outside of its lifetime", Severity: "mandatory"},
		{Code: "CERT-CPP-ERR50-CPP", Title: "Do not abruptly terminate the program", Severity: "required"},
	} {
		m.Standard = model.CERTCPP
		m.Docs = "https://wiki.sei.cmu.edu/confluence/display/cplusplus"
		Register(m)
	}
}
