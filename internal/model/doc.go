// Package model defines the data types shared across the photo-sorter
// pipeline.
//
// The core types are:
//
//   - MediaFile: a file discovered by the scanner (path, size, mtime)
//   - Metadata: best-effort capture timestamp and GPS position
//   - Mapping: group key -> ordered file list, plus the flat scan order
//
// All types are plain values with no behavior beyond construction helpers;
// the pipeline stages in scan, exif, group and mapping operate on them.
package model
