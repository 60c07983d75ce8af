// Package main provides the richdoc command-line tool.
//
// Usage:
//
//	richdoc export --author Ana notes.html
//	richdoc import minutes.docx > minutes.html
//	richdoc sanitize < pasted.html
//	richdoc words notes.html
//
// See --help for all available options.
package main

func main() {
	Execute()
}
