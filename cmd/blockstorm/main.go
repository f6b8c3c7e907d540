// Package main is the entry point for the Blockstorm editor.
package main

func main() {
	Execute()
}
