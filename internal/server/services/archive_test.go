package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/petguard/internal/carelog"
	"github.com/dmitrijs2005/petguard/internal/fhe"
	"github.com/dmitrijs2005/petguard/internal/logging"
	sc "github.com/dmitrijs2005/petguard/internal/server/config"
	"github.com/dmitrijs2005/petguard/internal/server/models"
)

func newArchive(t *testing.T, rm *memLedger) *ArchiveService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "petguard",
	}
	return NewArchiveService(db, rm, cfg, logging.NopLogger{})
}

// stubS3 swaps the SDK seams for the duration of the test and records the
// uploaded body.
func stubS3(t *testing.T, putErr, presignErr error) *bytes.Buffer {
	t.Helper()
	origLoad, origNew, origPre, origPut, origGet := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, putObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, putObject, presignGetObject = origLoad, origNew, origPre, origPut, origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000" {
			t.Fatalf("BaseEndpoint not applied")
		}
		if !opts.UsePathStyle {
			t.Fatalf("path style addressing expected")
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	var body bytes.Buffer
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		if putErr != nil {
			return nil, putErr
		}
		if *in.Bucket != "petguard" {
			t.Fatalf("bucket mismatch: %q", *in.Bucket)
		}
		if _, err := io.Copy(&body, in.Body); err != nil {
			t.Fatalf("read body: %v", err)
		}
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		return &v4.PresignedHTTPRequest{URL: "https://s3.local/" + *in.Bucket + "/" + *in.Key}, nil
	}
	return &body
}

func TestSnapshotKey(t *testing.T) {
	key := SnapshotKey(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	re := regexp.MustCompile(`^snapshots/2024/05/01/[0-9a-f-]{36}\.jsonl$`)
	if !re.MatchString(key) {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestSnapshot_UploadsEveryRecord(t *testing.T) {
	rm := newMemLedger()
	h := fhe.ComputeHandle([]byte("ct"), 0, fhe.Binding{ChainID: 31337, Entity: registryAddr, Submitter: alice}, fhe.Uint32)
	for i := 0; i < archivePageSize+3; i++ {
		rec := &models.CareLog{ID: uint64(i), Owner: alice, Category: carelog.Activity, Title: "Walk", CreatedAt: time.Unix(0, 0)}
		if i == 1 {
			rec.HasConfidentialField, rec.Handle = true, h
		}
		rm.records = append(rm.records, rec)
	}
	body := stubS3(t, nil, nil)

	snap, err := newArchive(t, rm).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if snap.Records != archivePageSize+3 {
		t.Fatalf("records = %d", snap.Records)
	}
	if snap.URL != "https://s3.local/petguard/"+snap.Key {
		t.Fatalf("url = %q", snap.URL)
	}

	scanner := bufio.NewScanner(body)
	var lines []snapshotLine
	for scanner.Scan() {
		var l snapshotLine
		if err := json.Unmarshal(scanner.Bytes(), &l); err != nil {
			t.Fatalf("bad line: %v", err)
		}
		lines = append(lines, l)
	}
	if len(lines) != archivePageSize+3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[1].Handle != h.Hex() || lines[0].Handle != "" {
		t.Fatalf("handles not exported as expected: %q %q", lines[0].Handle, lines[1].Handle)
	}
	if lines[len(lines)-1].ID != archivePageSize+2 {
		t.Fatalf("last id = %d", lines[len(lines)-1].ID)
	}
}

func TestSnapshot_Errors(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		rm := newMemLedger()
		rm.listErr = errBoom{}
		stubS3(t, nil, nil)
		_, err := newArchive(t, rm).Snapshot(context.Background())
		if err == nil || !regexp.MustCompile(`list records: boom`).MatchString(err.Error()) {
			t.Fatalf("expected list error, got %v", err)
		}
	})

	t.Run("load config", func(t *testing.T) {
		stubS3(t, nil, nil)
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("load-fail")
		}
		_, err := newArchive(t, newMemLedger()).Snapshot(context.Background())
		if err == nil || err.Error() != "load-fail" {
			t.Fatalf("expected load-fail, got %v", err)
		}
	})

	t.Run("put", func(t *testing.T) {
		stubS3(t, errors.New("denied"), nil)
		_, err := newArchive(t, newMemLedger()).Snapshot(context.Background())
		if err == nil || err.Error() != "upload snapshot: denied" {
			t.Fatalf("expected upload error, got %v", err)
		}
	})

	t.Run("presign", func(t *testing.T) {
		stubS3(t, nil, errors.New("sig"))
		_, err := newArchive(t, newMemLedger()).Snapshot(context.Background())
		if err == nil || err.Error() != "presign snapshot: sig" {
			t.Fatalf("expected presign error, got %v", err)
		}
	})
}
