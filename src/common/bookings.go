package common

import (
	"context"
	"ctoc/src/notify"
	"ctoc/src/types"
	"encoding/json"
	"fmt"
	"log"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/tidwall/gjson"
)

const BookingsConfirmedTopic = "BookingsConfirmed"

// BookingsConfirmedConsumer drains the confirmation topic and sends the buyer
// their receipt. Delivery failures are logged and dropped; the booking is
// already committed by the time a message lands here.
func BookingsConfirmedConsumer(consumer *kafka.Consumer, notifier *notify.Notifier) {
	topic := BookingsConfirmedTopic
	if err := consumer.SubscribeTopics([]string{topic}, nil); err != nil {
		log.Printf("[%s] Error subscribing to topic: %s\n", topic, err.Error())
		return
	}
	log.Printf("%s: Listening for messages...", topic)
	run := true
	for run {
		ev := consumer.Poll(100)
		switch e := ev.(type) {
		case *kafka.Message:
			handleBookingConfirmed(notifier, e.Value)
		case kafka.Error:
			log.Printf("[%s] Consumer error: %s\n", topic, e.Error())
			run = false
		}
	}
	consumer.Close()
}

func handleBookingConfirmed(notifier *notify.Notifier, body []byte) {
	if !gjson.ValidBytes(body) {
		log.Printf("[%s]: Received invalid json body. Aborting", BookingsConfirmedTopic)
		return
	}
	var event types.BookingConfirmedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error deserializing JSON: %s\n", err.Error())
		return
	}
	if event.BuyerEmail == "" {
		log.Printf("[%s]: Message without buyer email. Skipping", BookingsConfirmedTopic)
		return
	}
	text := fmt.Sprintf("Your booking for %s is confirmed. Transaction ID: %s",
		event.ItemName, event.TransactionID)
	if _, err := notifier.Send(context.Background(), event.BuyerEmail, types.CHANNEL_EMAIL, text); err != nil {
		log.Printf("Error sending booking confirmation to %s: %s\n", event.BuyerEmail, err.Error())
	}
}
