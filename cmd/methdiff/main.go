// cmd/methdiff/main.go
package main

import (
	"methdiff/internal/app"
	"methdiff/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
