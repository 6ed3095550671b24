// Package branding holds product naming shared by page titles and figures.
package branding

// AppName is the product name shown in page titles.
const AppName = "Noma"

// Authors lists the team credited on the overview tab.
var Authors = []string{"Abhishek Pillai", "Shrey Gupta", "Siddhant Agarwal"}
