package lib

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
)

// MediaStore uploads listing images and hands back public URLs. It runs
// before the listing row is inserted; the booking path never touches it.
type MediaStore struct {
	client *s3.Client
	bucket string
}

func NewMediaStore(client *s3.Client, bucket string) *MediaStore {
	return &MediaStore{client: client, bucket: bucket}
}

// Store writes one object under prefix and returns its public URL. The key is
// derived from the upload time and a slug of the original filename.
func (m *MediaStore) Store(ctx context.Context, prefix string, filename string, contentType string, body io.Reader) (string, error) {
	ext := path.Ext(filename)
	base := filename[:len(filename)-len(ext)]
	key := fmt.Sprintf("%s/%d_%s%s", prefix, time.Now().UnixMilli(), slug.Make(base), ext)

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return "", err
	}
	err = s3.NewObjectExistsWaiter(m.client).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	}, time.Minute)
	if err != nil {
		log.Printf("Failed attempt to wait for object %s to exist: %s\n", key, err.Error())
		return "", err
	}
	log.Printf("Added object '%s' to bucket '%s'", key, m.bucket)
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", m.bucket, key), nil
}
