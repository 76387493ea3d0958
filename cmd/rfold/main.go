// cmd/rfold/main.go
package main

import (
	"rfold/internal/app"
	"rfold/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
