/*
Package logging configures the structured logger used across apibind.

The library itself logs very little: skipped payload values during
deserialization are reported at debug level, and the DynamoDB datastore
reports client setup and decode fallbacks. Components accept a *slog.Logger
through a setter or an option; when none is given they use Nop().

	logger := logging.New(logging.Config{
	    Level:  logging.LevelDebug,
	    Format: logging.FormatJSON,
	})
	apibind.SetLogger(logger)
*/
package logging
