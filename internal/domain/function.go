package domain

import (
	"fmt"
	"strings"
)

// Function is one of the six top-level CSF 2.0 functions.
type Function string

const (
	FunctionGovern   Function = "GV"
	FunctionIdentify Function = "ID"
	FunctionProtect  Function = "PR"
	FunctionDetect   Function = "DE"
	FunctionRespond  Function = "RS"
	FunctionRecover  Function = "RC"
)

// Functions lists the CSF functions in framework order.
var Functions = []Function{
	FunctionGovern,
	FunctionIdentify,
	FunctionProtect,
	FunctionDetect,
	FunctionRespond,
	FunctionRecover,
}

var functionNames = map[Function]string{
	FunctionGovern:   "GOVERN",
	FunctionIdentify: "IDENTIFY",
	FunctionProtect:  "PROTECT",
	FunctionDetect:   "DETECT",
	FunctionRespond:  "RESPOND",
	FunctionRecover:  "RECOVER",
}

func (f Function) Valid() bool {
	_, ok := functionNames[f]
	return ok
}

// FullName returns the upper-case function name, e.g. "GOVERN".
func (f Function) FullName() string {
	if n, ok := functionNames[f]; ok {
		return n
	}
	return string(f)
}

// ParseFunction accepts either the two-letter code or the full name.
func ParseFunction(s string) (Function, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for code, name := range functionNames {
		if string(code) == upper || name == upper {
			return code, nil
		}
	}
	return "", fmt.Errorf("invalid CSF function: %s", s)
}

// FunctionOf extracts the function code from any taxonomy identifier
// ("GV", "GV.OC", "GV.OC-01"). Returns "" when the prefix is not a function.
func FunctionOf(id string) Function {
	if len(id) < 2 {
		return ""
	}
	f := Function(id[:2])
	if !f.Valid() {
		return ""
	}
	return f
}
