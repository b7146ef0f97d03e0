package planner

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tripmitra/tripmitra/internal/app/models"
)

// Booking link categories.
const (
	CategoryHotels     = "hotels"
	CategoryFlights    = "flights"
	CategoryTrains     = "trains"
	CategoryActivities = "activities"
)

// GenerateBookingLinks templates the fixed provider URL set from one set of
// booking parameters. Pure string work, no network: identical params yield a
// byte-identical link set on every call. Destination is percent-encoded and
// dates are already ISO formatted.
func GenerateBookingLinks(params models.BookingParams) []models.BookingLink {
	dest := url.QueryEscape(params.Destination)
	checkin := params.StartDate
	checkout := params.EndDate

	return []models.BookingLink{
		{Provider: "Booking.com", Category: CategoryHotels,
			URL: fmt.Sprintf("https://www.booking.com/searchresults.html?ss=%s&checkin=%s&checkout=%s", dest, checkin, checkout)},
		{Provider: "MakeMyTrip Hotels", Category: CategoryHotels,
			URL: fmt.Sprintf("https://www.makemytrip.com/hotels/hotel-listing/?city=%s&checkin=%s&checkout=%s", dest, checkin, checkout)},
		{Provider: "Airbnb", Category: CategoryHotels,
			URL: fmt.Sprintf("https://www.airbnb.co.in/s/%s/homes?checkin=%s&checkout=%s", dest, checkin, checkout)},
		{Provider: "Goibibo", Category: CategoryHotels,
			URL: fmt.Sprintf("https://www.goibibo.com/hotels/hotels-in-%s/", strings.ToLower(dest))},

		{Provider: "MakeMyTrip Flights", Category: CategoryFlights,
			URL: fmt.Sprintf("https://www.makemytrip.com/flights/?from=&to=%s&date=%s", dest, checkin)},
		{Provider: "Goibibo Flights", Category: CategoryFlights,
			URL: fmt.Sprintf("https://www.goibibo.com/flights/?from=&to=%s&date=%s", dest, checkin)},
		{Provider: "Skyscanner", Category: CategoryFlights,
			URL: fmt.Sprintf("https://www.skyscanner.co.in/transport/flights/&/%s/?outboundDate=%s", dest, checkin)},
		{Provider: "Cleartrip", Category: CategoryFlights,
			URL: "https://www.cleartrip.com/flights"},

		{Provider: "IRCTC", Category: CategoryTrains,
			URL: "https://www.irctc.co.in/nget/train-search"},
		{Provider: "MakeMyTrip Trains", Category: CategoryTrains,
			URL: "https://www.makemytrip.com/railways/"},

		{Provider: "GetYourGuide", Category: CategoryActivities,
			URL: fmt.Sprintf("https://www.getyourguide.com/s/?q=%s&date_from=%s", dest, checkin)},
		{Provider: "TripAdvisor", Category: CategoryActivities,
			URL: fmt.Sprintf("https://www.tripadvisor.in/Attractions-g-Activities-%s.html", dest)},
		{Provider: "Thrillophilia", Category: CategoryActivities,
			URL: fmt.Sprintf("https://www.thrillophilia.com/search?q=%s", dest)},
	}
}
