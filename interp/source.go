/*
File    : lox/interp/source.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package interp

import "os"

// ReadSourceFile loads a script path for the CLI (spec §6). Adapted from
// the teacher's file/file.go fopen/fread builtins: that file exposed file
// I/O as callable Lox-surface builtins, which spec's non-goals exclude
// from the language; this keeps only the host-side concern of reading the
// script argument before handing the text to the lexer.
func ReadSourceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
