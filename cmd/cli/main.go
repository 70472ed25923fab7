package main

import (
	"fmt"
	"os"

	"github.com/dpearce/inkwell/cmd/cli/auth"
	"github.com/dpearce/inkwell/cmd/cli/posts"
	"github.com/dpearce/inkwell/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	posts.InitPosts(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
