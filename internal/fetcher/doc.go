// Package fetcher transfers a single remote file into a local temporary path.
//
// A transfer resumes from whatever the temporary file already holds, retries
// transient failures internally and reports what went wrong through *Error.
// The fetcher never writes anywhere but the temporary path it was given;
// publishing the finished file is the caller's job.
package fetcher
