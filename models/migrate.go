package models

// All lists every table the service owns, in dependency order
func All() []interface{} {
	return []interface{}{
		&City{},
		&RoomType{},
		&Room{},
		&Booking{},
		&User{},
		&Department{},
		&JobListing{},
		&JobApplication{},
		&FAQ{},
		&ContactMessage{},
	}
}
