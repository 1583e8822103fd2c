package devserver

import (
	"github.com/google/uuid"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/utils"
)

// Seed loads a small development dataset: documents to acknowledge, a week
// of shifts for the given staff member and tonight's reservations. It is a
// no-op when documents already exist, so restarts keep their data.
func (s *Store) Seed(staffID string) error {
	var n int64
	if err := s.DB.Model(&Document{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := utils.VenueNow()
	today := now.Format(dayLayout)

	docs := []Document{
		{
			ID:          uuid.NewString(),
			Title:       "Hygieneschulung HACCP",
			Version:     3,
			PublishedAt: now.AddDate(0, 0, -14),
			RequiresAck: true,
			ContentType: "text/markdown",
			Content:     []byte("# Hygieneschulung\n\nKühlkette, Temperaturprotokolle, Handhygiene.\n"),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Allergenliste Küche",
			Version:     7,
			PublishedAt: now.AddDate(0, 0, -3),
			RequiresAck: true,
			ContentType: "text/markdown",
			Content:     []byte("# Allergene\n\nA Gluten, C Eier, G Milch, H Schalenfrüchte.\n"),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Speisekarte Herbst",
			Version:     1,
			PublishedAt: now.AddDate(0, 0, -1),
			RequiresAck: false,
			ContentType: "text/markdown",
			Content:     []byte("# Herbstkarte\n\nKürbisrisotto, Wildragout, Zwetschgenkuchen.\n"),
		},
	}
	if err := s.DB.Create(&docs).Error; err != nil {
		return err
	}

	shifts := make([]Shift, 0, 5)
	for i := 0; i < 5; i++ {
		shifts = append(shifts, Shift{
			ID:      uuid.NewString(),
			StaffID: staffID,
			Date:    now.AddDate(0, 0, i).Format(dayLayout),
			Start:   "10:00",
			End:     "18:30",
			Role:    "service",
		})
	}
	if err := s.DB.Create(&shifts).Error; err != nil {
		return err
	}

	reservations := []Reservation{
		{
			ID: uuid.NewString(), GuestName: "Familie Brandt", GuestPhone: "+49 171 2345678",
			PartySize: 4, Date: today, TimeSlot: "18:00", TableCode: "T5",
			Status: v1.ReservationConfirmed,
		},
		{
			ID: uuid.NewString(), GuestName: "Herr Okafor",
			PartySize: 2, Date: today, TimeSlot: "19:30",
			Status: v1.ReservationRequested, Notes: "Fensterplatz, falls frei",
		},
	}
	if err := s.DB.Create(&reservations).Error; err != nil {
		return err
	}

	event := EventBooking{
		ID:           uuid.NewString(),
		Name:         "Weinprobe Jahrgang 2023",
		ContactName:  "I. Keller",
		ContactEmail: "keller@example.com",
		Date:         now.AddDate(0, 0, 21).Format(dayLayout),
		GuestCount:   30,
		RoomCode:     "saal",
		PackageCode:  "buffet",
		PriceCents:   packagePrices["buffet"] * 30,
		Status:       v1.EventOffered,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		return err
	}

	return nil
}
