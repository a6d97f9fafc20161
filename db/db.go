package db

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jsphweid/chorale/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const tableName = "chorale-progressions"

func getEndpoint() string {
	if endpoint := os.Getenv("DYNAMO_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

// SaveProgression stores a generated progression record.
func SaveProgression(rec model.ProgressionRecord) {
	endpoint := getEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}

	item := map[string]*dynamodb.AttributeValue{
		"PK":        {S: aws.String(rec.ID)},
		"Key":       {S: aws.String(rec.Key)},
		"Mode":      {S: aws.String(rec.Mode)},
		"Numerals":  {S: aws.String(strings.Join(rec.Numerals, " "))},
		"Chords":    {S: aws.String(strings.Join(rec.Chords, ","))},
		"CreatedAt": {N: aws.String(strconv.FormatInt(rec.CreatedAt.Unix(), 10))},
	}

	client := dynamodb.New(session)
	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	}
	if _, err := client.PutItem(input); err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}
}

// GetProgression fetches a stored progression by id.
func GetProgression(id string) (model.ProgressionRecord, bool) {
	endpoint := getEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}

	client := dynamodb.New(session)
	input := &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	}
	dbres, err := client.GetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}
	if dbres.Item == nil {
		return model.ProgressionRecord{}, false
	}

	var rec model.ProgressionRecord
	rec.ID = *dbres.Item["PK"].S
	rec.Key = *dbres.Item["Key"].S
	rec.Mode = *dbres.Item["Mode"].S
	rec.Numerals = strings.Fields(*dbres.Item["Numerals"].S)
	if s := *dbres.Item["Chords"].S; s != "" {
		rec.Chords = strings.Split(s, ",")
	}
	if dbres.Item["CreatedAt"].N != nil {
		secs, _ := strconv.ParseInt(*dbres.Item["CreatedAt"].N, 10, 64)
		rec.CreatedAt = time.Unix(secs, 0)
	}
	return rec, true
}
