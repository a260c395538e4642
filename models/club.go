package models

// NoDescription is substituted when a club node carries no description block.
const NoDescription = "No description available."

// Club is one normalized entry of the club directory.
type Club struct {
	// Name is the club's accessible name. Never empty.
	Name string `json:"name"`

	// Description is the club blurb, or NoDescription when the page has none.
	Description string `json:"description"`

	// URL is the club's external link. Empty when absent.
	URL string `json:"url"`

	// Image is the club logo source. Empty when absent.
	Image string `json:"image"`
}
