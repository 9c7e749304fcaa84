// Package storage uploads submitted documents to object storage and hands
// back publicly resolvable URLs. Ticket records only ever hold these URLs,
// never file bytes.
package storage

import (
    "fmt"
    "io"
    "path"
    "strings"

    "github.com/aliyun/aliyun-oss-go-sdk/oss"
    "github.com/google/uuid"
)

// ObjectStorage is the collaborator interface the upload handler depends on.
type ObjectStorage interface {
    Upload(fieldName, fileName string, r io.Reader) (string, error)
}

type OSSService struct {
    client     *oss.Client
    endpoint   string
    bucketName string
}

func NewOSSService(endpoint, accessKeyID, accessKeySecret, bucketName string) (*OSSService, error) {
    client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
    if err != nil {
        return nil, err
    }
    return &OSSService{client: client, endpoint: endpoint, bucketName: bucketName}, nil
}

// Upload stores the file under a collision-free key and returns its public
// URL.
func (o *OSSService) Upload(fieldName, fileName string, r io.Reader) (string, error) {
    bucket, err := o.client.Bucket(o.bucketName)
    if err != nil {
        return "", err
    }

    objectKey := path.Join("uploads", fieldName, uuid.New().String()+path.Ext(fileName))
    if err := bucket.PutObject(objectKey, r); err != nil {
        return "", err
    }

    host := strings.TrimPrefix(strings.TrimPrefix(o.endpoint, "https://"), "http://")
    return fmt.Sprintf("https://%s.%s/%s", o.bucketName, host, objectKey), nil
}
