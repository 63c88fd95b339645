package services

import (
	"fmt"
	"strings"

	"jiji-catalog/models"
)

// PrintHarvestReport renders the end-of-run statistics to the operator
// console.
func PrintHarvestReport(r *models.HarvestReport) {
	sep := strings.Repeat("═", 44)
	thin := strings.Repeat("─", 44)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  HARVEST RUN SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Ads on listing page    : \033[1m%d\033[0m\n", r.Listed)
	fmt.Printf("  Skipped (already done) : \033[1m%d\033[0m\n", r.Resumed)
	fmt.Printf("  Newly scraped          : \033[1;32m%d\033[0m\n", r.Scraped)
	fmt.Printf("  Images saved           : \033[1;32m%d\033[0m\n", r.ImagesSaved)
	if r.Failures > 0 {
		fmt.Printf("  Failures               : \033[1;31m%d\033[0m\n", r.Failures)
	}
	fmt.Printf("  %s\n\n", thin)
}
