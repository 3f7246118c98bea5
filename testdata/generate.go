package main

import (
	"log"
	"os"
	"time"

	"github.com/segmentio/parquet-go"
)

type Order struct {
	ID    int64   `parquet:"id"`
	Total float64 `parquet:"total"`
}

type Event struct {
	Name     string    `parquet:"name"`
	Attendee *string   `parquet:"attendee,optional"`
	Day      int32     `parquet:"day,date"`
	At       time.Time `parquet:"at,timestamp"`
	Tags     []string  `parquet:"tags,list"`
	Paid     bool      `parquet:"paid"`
}

func write[T any](name string, rows []T, options ...parquet.WriterOption) {
	file, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file, options...)
	if _, err := writer.Write(rows); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated %s with %d rows", name, len(rows))
}

func main() {
	write("orders.parquet", []Order{
		{ID: 1, Total: 10.5},
		{ID: 2, Total: 20},
		{ID: 3, Total: 0.25},
	})

	bob := "bob"
	write("events.parquet", []Event{
		{
			Name:     "launch",
			Attendee: &bob,
			Day:      19000,
			At:       time.Date(2022, time.January, 8, 9, 30, 0, 0, time.UTC),
			Tags:     []string{"public", "keynote"},
			Paid:     true,
		},
		{
			Name: "retro, internal",
			Day:  19001,
			At:   time.Date(2022, time.January, 9, 17, 0, 0, 250000000, time.UTC),
		},
	}, parquet.Compression(&parquet.Zstd))
}
