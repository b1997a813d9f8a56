// Package main provides the gnblob CLI application.
// gnblob builds and updates BlobDir datasets.
package main

import "github.com/gnames/gnblob/cmd"

func main() {
	cmd.Execute()
}
