package translate_test

import (
	"fmt"

	"github.com/npillmayer/braille/internal/testtables"
	"github.com/npillmayer/braille/translate"
)

func ExampleBackTranslate() {
	out := make([]rune, 16)
	res, err := translate.BackTranslate(testtables.English(), []rune(",! &"), out,
		translate.Options{Cursor: translate.NoCursor})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%q, %d cells consumed\n", string(out[:res.Produced]), res.Consumed)
	// Output: "The and", 4 cells consumed
}

func ExampleTranslate() {
	out := make([]rune, 16)
	res, err := translate.Translate(testtables.English(), []rune("The chest"), out,
		translate.Options{Cursor: translate.NoCursor})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out[:res.Produced]))
	// Output: ,! *E/
}
