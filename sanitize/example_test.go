package sanitize_test

import (
	"fmt"

	"github.com/tsawler/richdoc/sanitize"
)

func ExampleSanitize() {
	input := `<div><b>Hello</b> <script>alert('xss')</script></div>`
	fmt.Println(sanitize.Sanitize(input))
	// Output: <b>Hello</b>
}

func ExampleSanitize_anchors() {
	fmt.Println(sanitize.Sanitize(`<a href="javascript:alert(1)">click</a>`))
	fmt.Println(sanitize.Sanitize(`<a href="https://example.com">site</a>`))
	// Output:
	// <span>click</span>
	// <a href="https://example.com" rel="noopener noreferrer" target="_blank">site</a>
}

func ExampleSanitize_empty() {
	fmt.Println(sanitize.Sanitize("   "))
	// Output: <p><br/></p>
}
