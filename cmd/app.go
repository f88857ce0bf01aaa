// Package cmd implements the CLI application to manage the portfolio book.
package cmd

import (
	"flag"
	"fmt"

	"github.com/andrelq/carteira"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands. A main package calls Register() and then
// Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addPositionCmd{}, "record")
	c.Register(&addFixedCmd{}, "record")
	c.Register(&addLoanCmd{}, "record")

	c.Register(&summaryCmd{}, "report")
	c.Register(&fixedCmd{}, "report")
	c.Register(&loansCmd{}, "report")
	c.Register(&scheduleCmd{}, "report")
	c.Register(&xirrCmd{}, "report")

	c.Register(&advanceCmd{}, "maintenance")
	c.Register(&updateCmd{}, "maintenance")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
	c.Register(&serveCmd{}, "server")
}

// as a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables.

var bookDir = flag.String("book-dir", ".carteira", "Path to the book folder (JSONL files)")

// OpenBook loads the book from the app book folder. A missing folder is an
// empty book.
func OpenBook() (*carteira.Book, error) {
	return carteira.DecodeBook(*bookDir)
}

// SaveBook writes the book back to the app book folder.
func SaveBook(b *carteira.Book) error {
	return carteira.EncodeBook(*bookDir, b)
}

// printMarkdown renders markdown to the terminal. If rendering fails the raw
// markdown is still readable, print it as is.
func printMarkdown(content string) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		fmt.Println(content)
		return
	}
	fmt.Print(out)
}
