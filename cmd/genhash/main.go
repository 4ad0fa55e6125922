// cmd/genhash — prints the bcrypt hash to use as ADMIN_PASSWORD_HASH.
// Usage: go run ./cmd/genhash -password <password>
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "", "password to hash")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: genhash -password <password>")
		os.Exit(2)
	}

	h, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
