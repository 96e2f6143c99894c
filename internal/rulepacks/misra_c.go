package rulepacks

import "github.com/codewithboateng/rulebench/internal/model"

func init() {
	for _, m := range []RuleMeta{
		{Code: "MISRA-C-2.2", Title: "There shall be no dead code", Severity: "required"},
		{Code: "MISRA-C-8.4", Title: "A compatible declaration shall be visible when an object or function with external linkage is defined", Severity: "required"},
		{Code: "MISRA-C-10.1", Title: "Operands shall not be of an inappropriate essential type", Severity: "required"},
		{Code: "MISRA-C-10.3", Title: "The value of an expression shall not be assigned to an object with a narrower essential type", Severity: "required"},
		{Code: "MISRA-C-11.3", Title: "A cast shall not be performed between a pointer to object type and a pointer to a different object type", Severity: "required"},
		{Code: "MISRA-C-17.7", Title: "The value returned by a function having non-void return type shall be used", Severity: "required"},
		{Code: "MISRA-C-21.3", Title: "The memory allocation and deallocation functions of <stdlib.h> shall not be used", Severity: "required"},
	} {
		m.Standard = model.MISRAC
		m.Docs = "https://misra.org.uk/"
		Register(m)
	}
}
