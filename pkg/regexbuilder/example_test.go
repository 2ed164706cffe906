package regexbuilder_test

import (
	"fmt"

	rb "github.com/wuxler/rxb/pkg/regexbuilder"
)

func ExampleBuilder() {
	version := rb.New().
		Literal("v").
		OneOrMore(rb.Range("0-9")).
		Literal(".").
		OneOrMore(rb.Range("0-9"))

	fmt.Println(version)
	// Output: v[0-9]+\.[0-9]+
}

func ExampleOneOrMore() {
	fmt.Println(rb.OneOrMore(rb.Literal("c")))
	fmt.Println(rb.OneOrMore(rb.Literal("bc")))
	// Output:
	// c+
	// (?:bc)+
}

func ExampleAlternate() {
	fmt.Println(rb.Alternate(rb.Literal("ab"), rb.Literal("c")))
	fmt.Println(rb.Alternate(rb.Literal("a"), rb.Literal("b")).Literal("c"))
	// Output:
	// (?:ab)|c
	// a|bc
}

func ExampleBuilder_Append() {
	x := rb.Literal("ab")
	fmt.Println(x.Append(x))
	// Output: abab
}
