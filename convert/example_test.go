package convert_test

import (
	"fmt"

	"github.com/tsawler/richdoc/convert"
)

func ExampleParagraphs() {
	paras, err := convert.Paragraphs(`<h2>Plan</h2><ol><li>First<ul><li>detail</li></ul></li></ol>`)
	if err != nil {
		panic(err)
	}
	for _, p := range paras {
		fmt.Printf("heading=%d list=%s level=%d text=%q\n", p.Heading, p.List.Kind, p.List.Level, p.Text())
	}
	// Output:
	// heading=2 list=none level=0 text="Plan"
	// heading=0 list=numbered level=0 text="First"
	// heading=0 list=bulleted level=1 text="detail"
}
