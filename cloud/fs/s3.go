// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type S3Filesystem struct {
	svc    *s3.S3
	bucket string
	prefix string
}

// NewS3Filesystem uploads to bucket under prefix, using the default AWS credential chain.
func NewS3Filesystem(region, bucket, prefix string) (*S3Filesystem, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("could not create AWS session: %w", err)
	}

	return &S3Filesystem{svc: s3.New(sess), bucket: bucket, prefix: prefix}, nil
}

func (s3Filesystem *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.bucket),
		Key:          aws.String(s3Filesystem.prefix + filename),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType(filename),
	})
	if err := req.Send(); err != nil {
		return fmt.Errorf("could not upload %s: %w", filename, err)
	}
	return nil
}
