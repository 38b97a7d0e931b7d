// calendar/links.go
package calendar

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/quickflightcal/backend/models"
)

const timestampLayout = "20060102T150405"

const descriptionFooter = "\n\n\n\nGenerated with 💙 by QuickFlightCal ✈️ \n\n Generate calendar links for your flights"

// GenerateLinks builds the calendar-add targets for one journey: a Google
// Calendar deep link, an Outlook compose deep link and a data: iCal payload.
// The event spans from the first leg's departure to the last leg's arrival;
// legs are assumed to be in travel order.
func GenerateLinks(legs []models.FlightLeg) (models.CalendarLinks, error) {
	if len(legs) == 0 {
		return models.CalendarLinks{}, fmt.Errorf("no flight legs to generate links for")
	}

	start := legs[0].DepartureTime.UTC().Format(timestampLayout)
	end := legs[len(legs)-1].ArrivalTime.UTC().Format(timestampLayout)

	titles := make([]string, 0, len(legs))
	lines := make([]string, 0, len(legs))
	for _, leg := range legs {
		titles = append(titles, fmt.Sprintf("%s %d", leg.Airline, leg.Number))
		lines = append(lines, fmt.Sprintf("%s %d: %s (%s) to %s (%s)",
			leg.Airline, leg.Number,
			leg.DepartureAirport, leg.DepartureTime.UTC().Format("15:04"),
			leg.ArrivalAirport, leg.ArrivalTime.UTC().Format("15:04")))
	}

	eventTitle := strings.Join(titles, " + ")
	eventDescription := strings.Join(lines, "\n") + descriptionFooter

	googleLink := "https://www.google.com/calendar/render?action=TEMPLATE&text=" +
		url.QueryEscape(eventTitle) +
		"&dates=" + start + "/" + end +
		"&details=" + url.QueryEscape(eventDescription)

	outlookLink := "https://outlook.live.com/calendar/0/deeplink/compose?subject=" +
		url.QueryEscape(eventTitle) +
		"&startdt=" + start + "&enddt=" + end +
		"&body=" + url.QueryEscape(eventDescription)

	icalLink := "data:text/calendar;charset=utf8," + strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"DTSTART:" + start,
		"DTEND:" + end,
		"SUMMARY:" + eventTitle,
		"DESCRIPTION:" + eventDescription,
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\n")

	return models.CalendarLinks{
		GoogleLink:  googleLink,
		OutlookLink: outlookLink,
		ICalLink:    icalLink,
	}, nil
}
