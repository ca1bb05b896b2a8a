package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Round is one lottery's full ticket-number pool and its partition into
// available, booked and sold numbers. Round numbers are assigned
// sequentially starting at 1 and are never reused.
type Round struct {
	RoundNo          int64
	AvailableTickets []string
	CreatedAt        time.Time
}

// TicketNumbers generates the full numbered set for a round of the given
// size: "1" through count, each left-padded with zeros to the decimal width
// of count so that lexical and numeric order agree (count=250 -> "001".."250").
func TicketNumbers(count int) []string {
	width := len(strconv.Itoa(count))
	numbers := make([]string, count)
	for i := range numbers {
		numbers[i] = fmt.Sprintf("%0*d", width, i+1)
	}
	return numbers
}
