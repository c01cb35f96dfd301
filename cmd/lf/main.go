package main

import "github.com/silviuClosca/languageForge/cmd/lf/root"

func main() {
	root.Execute()
}
