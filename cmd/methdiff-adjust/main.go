// cmd/methdiff-adjust/main.go
package main

import (
	"methdiff/internal/adjustapp"
	"methdiff/internal/appshell"
)

func main() {
	appshell.Main(adjustapp.RunContext)
}
