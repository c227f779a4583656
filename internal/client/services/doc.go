// Package services contains the application services behind the fortune
// seal CLI: profile and settings, fortune reveal and history, and backups.
//
// Services own the read-then-write sequences around the pure fortune
// engine. FortuneService serialises reveals so a bucket is generated at most
// once per process, and the storage layer keeps the first row written for a
// bucket.
package services
