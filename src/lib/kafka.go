package lib

import (
	"log"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

func NewKafkaProducer(broker string, clientId string) (*kafka.Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": broker,
		"client.id":         clientId,
		"acks":              "all",
	})
	if err != nil {
		log.Printf("Error on producer: %s\n", err.Error())
		return nil, err
	}
	return p, nil
}

func NewKafkaConsumer(broker string, groupId string) (*kafka.Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": broker,
		"group.id":          groupId,
		"auto.offset.reset": "smallest",
		"retry.backoff.ms":  100,
	})
	if err != nil {
		log.Printf("Error on consumer: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

// Publish fires one message at topic and waits for the delivery report.
func Publish(p *kafka.Producer, topic string, payload []byte) error {
	deliveryChan := make(chan kafka.Event, 1)
	err := p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          payload,
	}, deliveryChan)
	if err != nil {
		return err
	}
	e := <-deliveryChan
	if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
		return m.TopicPartition.Error
	}
	return nil
}
