package main

import (
	"github.com/josephsnyder/gerrit-oauth-provider/internal"
)

func main() {
	internal.StartServer()
}
