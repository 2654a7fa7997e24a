package main

import "github.com/GregMSThompson/budget-backend/cmd/budgetctl/cmd"

func main() {
	cmd.Execute()
}
