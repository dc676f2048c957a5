/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/masterphooey/wakeword-recorder-api/cmd"

func main() {
	cmd.Execute()
}
