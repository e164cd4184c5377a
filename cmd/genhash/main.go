package main

import (
	"flag"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "almacen2026", "password to hash")
	flag.Parse()

	h, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
