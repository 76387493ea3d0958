// cmd/rfold-eval/main.go
package main

import (
	"os"

	"rfold/internal/evalapp"
)

func main() {
	os.Exit(evalapp.Run(os.Args[1:], os.Stdout, os.Stderr))
}
