package harvester

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToListing(t *testing.T) {
	t.Run("maps all wire fields", func(t *testing.T) {
		wire := &wireListing{
			Title:   "Dell Inspiron 15 3520",
			Price:   50000,
			Link:    "https://amazon.example/dell",
			Source:  "Amazon",
			RawText: "bank offer",
		}

		listing := MapToListing(wire)

		assert.Equal(t, "Dell Inspiron 15 3520", listing.Title)
		assert.Equal(t, 50000, listing.Price)
		assert.Equal(t, "https://amazon.example/dell", listing.Link)
		assert.Equal(t, "Amazon", listing.Source)
		assert.Equal(t, "bank offer", listing.RawText)
	})

	t.Run("negative scraped price collapses to zero", func(t *testing.T) {
		wire := &wireListing{Title: "Glitched", Price: -499, Source: "Flipkart"}

		listing := MapToListing(wire)

		assert.Equal(t, 0, listing.Price)
	})
}
