/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache implements httpcache.Cache on top of an Amazon S3 bucket.
 * It keeps remotely fetched tournament rosters and snapshots so repeated
 * pairing runs against the same URL do not hit the origin again.
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "bbp-pairings/httpcache"

// Cache stores http responses as objects in an S3 bucket.
type Cache struct {
	// Client is created by Init from the default AWS configuration; callers
	// may replace it before use.
	Client *s3.Client

	bucketName string
	gzip       bool
	logErrors  bool
	ctx        context.Context
}

// New returns a Cache for bucketName. Objects are gzipped when gzipIn is
// set. Init must be called before use.
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	logErrorsIn bool) *Cache {

	return &Cache{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// Init loads the default AWS configuration (environment, shared config and
// credentials files) and verifies the bucket can be read.
func (c *Cache) Init() error {
	cfg, err := config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(cfg)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.objectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		var apiErr smithy.APIError
		// NoSuchKey is an ordinary miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			c.logf("s3cache.get: failed to get %v/%v: %v", c.bucketName,
				objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.gzip {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logf("s3cache.get: failed to open compressed %v/%v: %v",
				c.bucketName, objKey, err)
			return nil, false
		}
		defer gz.Close()
		rdr = gz
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("s3cache.get: failed to read %v/%v: %v", c.bucketName, objKey,
			err)
		return nil, false
	}

	return data, true
}

func (c *Cache) Set(key string, data []byte) {
	objKey := c.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			c.logf("s3cache.set: failed to gzip %v/%v: %v", c.bucketName,
				objKey, err)
			return
		}
		if err := gw.Close(); err != nil {
			c.logf("s3cache.set: failed to gzip %v/%v: %v", c.bucketName,
				objKey, err)
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("s3cache.set: put failed for %v/%v: %v", c.bucketName, objKey,
			err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.objectKey(key)
	if _, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objKey),
	}); err != nil {
		c.logf("s3cache.delete: delete failed for %v/%v: %v", c.bucketName,
			objKey, err)
	}
}

// objectKey hashes the cache key (normally a URL) into a flat object name.
func (c *Cache) objectKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	objKey := fmt.Sprintf("%v/%v", keyPrefix, hex.EncodeToString(sum[:]))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

func (c *Cache) logf(format string, a ...any) {
	if c.logErrors {
		logrus.Warnf(format, a...)
	}
}
