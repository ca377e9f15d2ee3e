package main

import (
	"os"

	"github.com/michelzandonai/jira-mcp/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
