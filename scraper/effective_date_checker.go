// scraper/effective_date_checker.go
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/quickflightcal/backend/config"
	"github.com/quickflightcal/backend/models"
)

// Regex to find dates in format "Effective MM/DD/YYYY until MM/DD/YYYY"
var effectiveDateRegex = regexp.MustCompile(`Effective\s+(\d{2}/\d{2}/\d{4})\s+until\s+(\d{2}/\d{2}/\d{4})`)

const dateLayout = "01/02/2006" // for parsing MM/DD/YYYY

// parseEffectiveDateString extracts 'from' and 'until' dates using the regex.
func parseEffectiveDateString(textToSearch string) (from time.Time, until time.Time, rawMatch string, err error) {
	matches := effectiveDateRegex.FindStringSubmatch(textToSearch)
	if len(matches) < 3 {
		err = fmt.Errorf("could not find full 'Effective ... until ...' pattern in provided text block. Text searched: %s", textToSearch)
		return
	}

	rawMatch = matches[0]
	fromString := matches[1]
	untilString := matches[2]

	from, err = time.Parse(dateLayout, fromString)
	if err != nil {
		err = fmt.Errorf("failed to parse 'from' date '%s': %w", fromString, err)
		return
	}

	until, err = time.Parse(dateLayout, untilString)
	if err != nil {
		err = fmt.Errorf("failed to parse 'until' date '%s': %w", untilString, err)
		return
	}
	return
}

// extractEffectiveDateText looks for the publication UL inside the container:
// first li names the timetable download, second li carries the
// "Effective ... until ..." line.
func extractEffectiveDateText(doc *goquery.Document, containerSelector string) string {
	var foundDateText string
	doc.Find(containerSelector).Find("ul").EachWithBreak(func(i int, ulSelection *goquery.Selection) bool {
		firstLiText := strings.TrimSpace(ulSelection.Find("li:first-of-type").Text())
		if strings.Contains(firstLiText, "Timetable") {
			secondLiText := strings.TrimSpace(ulSelection.Find("li:nth-of-type(2)").Text())
			if strings.Contains(secondLiText, "Effective") && strings.Contains(secondLiText, "until") {
				foundDateText = secondLiText
				return false
			}
		}
		return true
	})
	return foundDateText
}

// parseEffectiveDatesFromHTML parses the publication page HTML and extracts
// the effective-date window. Split out so it can be exercised without a live
// page.
func parseEffectiveDatesFromHTML(body io.Reader, pageURL, containerSelector string) (*models.TimetableEffectiveInfo, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	foundDateText := extractEffectiveDateText(doc, containerSelector)
	if foundDateText == "" {
		log.Printf("WARN Scraper: could not find the timetable UL with an 'Effective ... until ...' line within container '%s' on page %s.", containerSelector, pageURL)
		return nil, fmt.Errorf("target UL for effective dates not found on %s within container '%s'", pageURL, containerSelector)
	}

	from, until, rawStr, err := parseEffectiveDateString(foundDateText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse effective dates from text '%s': %w", foundDateText, err)
	}

	return &models.TimetableEffectiveInfo{
		EffectiveFrom:  from,
		EffectiveUntil: until,
		RawDateString:  rawStr,
		LastChecked:    time.Now().UTC(),
	}, nil
}

// ScrapeTimetableEffectiveDates fetches the timetable publication page and
// extracts the effective-date window of the currently published dataset.
// The container selector typically comes from config.
func ScrapeTimetableEffectiveDates(containerSelector string) (*models.TimetableEffectiveInfo, error) {
	pageURL := config.AppConfig.Timetable.EffectiveDatePage
	if containerSelector == "" { // fallback if an empty selector is passed
		log.Println("WARN Scraper: no CSS selector provided for the timetable effective-date container, using 'body'.")
		containerSelector = "body"
	}

	log.Printf("Scraper: Checking timetable effective dates from %s (container: '%s')\n", pageURL, containerSelector)

	client := http.Client{Timeout: 20 * time.Second}
	res, err := client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get URL %s: status code %d", pageURL, res.StatusCode)
	}

	info, err := parseEffectiveDatesFromHTML(res.Body, pageURL, containerSelector)
	if err != nil {
		return nil, err
	}

	log.Printf("Scraper: Found timetable effective dates: From %s, Until %s (Raw: '%s')\n",
		info.EffectiveFrom.Format(dateLayout), info.EffectiveUntil.Format(dateLayout), info.RawDateString)
	return info, nil
}
