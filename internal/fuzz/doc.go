// Package fuzztests houses Go fuzz harnesses for the parts of acc that eat
// untrusted text: the ashlang lexer and parser, the assembly reader and the
// input literal packer. The goal is to catch panics and hangs on arbitrary
// input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
