package bookings

import "errors"

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrAlreadyBooked  = errors.New("item is already booked")
	ErrTransientStore = errors.New("could not complete reservation")
)
