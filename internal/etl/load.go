package etl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/moshu0517/etl-pipeline/internal/config"
	"github.com/moshu0517/etl-pipeline/internal/dataset"
	"github.com/moshu0517/etl-pipeline/pkg/logger"
)

// UploadStatus classifies the best-effort upload outcome.
type UploadStatus string

const (
	UploadSkipped UploadStatus = "skipped"
	UploadDone    UploadStatus = "uploaded"
	UploadFailed  UploadStatus = "failed"
)

// UploadOutcome reports what happened to the optional remote upload.
// None of its states invalidate the local artifact.
type UploadOutcome struct {
	Status   UploadStatus
	Location string // object location when Status is UploadDone
	Reason   string // why the upload was skipped
	Err      error  // upload error when Status is UploadFailed
}

// UploadCapability is the result of probing for a usable upload target:
// either a constructed client or the reason none is available.
type UploadCapability struct {
	Client *minio.Client
	Reason string
}

// Available reports whether an upload can be attempted.
func (c UploadCapability) Available() bool {
	return c.Client != nil
}

// CuratedResult describes the terminal artifact of a run.
type CuratedResult struct {
	Path    string
	Rows    int
	Columns int
	Upload  UploadOutcome
}

// Loader persists a validated dataset as the curated parquet artifact
// and attempts the optional remote upload. It trusts its caller: the
// orchestrator only invokes it after a passing validation verdict.
type Loader struct {
	S3  config.S3Settings
	Log *logger.Logger
}

// Load writes the curated file at outPath, then uploads it when the
// upload capability and complete credentials are present. Local
// persistence is the authoritative success condition: a failed or
// skipped upload never fails the stage.
func (l *Loader) Load(ctx context.Context, ds *dataset.Dataset, outPath string) (*CuratedResult, error) {
	l.Log.Infof("load: writing curated dataset to %s", outPath)
	if err := dataset.WriteParquet(ds, outPath); err != nil {
		return nil, fmt.Errorf("persist curated dataset: %w", err)
	}
	l.Log.Infof("load: saved %d rows, %d columns", ds.NumRows(), ds.NumCols())

	res := &CuratedResult{
		Path:    outPath,
		Rows:    ds.NumRows(),
		Columns: ds.NumCols(),
	}
	res.Upload = l.upload(ctx, outPath)
	return res, nil
}

func (l *Loader) upload(ctx context.Context, localPath string) UploadOutcome {
	capability := l.probeUpload()
	if !capability.Available() {
		l.Log.Warnf("load: upload skipped: %s", capability.Reason)
		return UploadOutcome{Status: UploadSkipped, Reason: capability.Reason}
	}

	key := l.S3.Prefix + filepath.Base(localPath)
	_, err := capability.Client.FPutObject(ctx, l.S3.Bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		l.Log.Errorf("load: upload failed: %v", err)
		return UploadOutcome{Status: UploadFailed, Err: err}
	}

	location := fmt.Sprintf("s3://%s/%s", l.S3.Bucket, key)
	l.Log.Infof("load: uploaded curated dataset to %s", location)
	return UploadOutcome{Status: UploadDone, Location: location}
}

// probeUpload evaluates the upload capability once per load: all five
// settings must be present simultaneously, partial configuration is
// treated as absent.
func (l *Loader) probeUpload() UploadCapability {
	if !l.S3.Complete() {
		return UploadCapability{Reason: "incomplete S3 configuration, upload disabled"}
	}

	client, err := minio.New(l.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(l.S3.AccessKey, l.S3.SecretKey, ""),
		Secure: true,
		Region: l.S3.Region,
	})
	if err != nil {
		return UploadCapability{Reason: fmt.Sprintf("S3 client unavailable: %v", err)}
	}
	return UploadCapability{Client: client}
}
