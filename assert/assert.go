package assert

import "github.com/oomph-ac/kinemove/oerror"

// IsTrue panics with an oerror.Error if ok is false. It guards programmer errors such as missing collaborators.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
