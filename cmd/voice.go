package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/YongERong/wth-caifan-lovers/pkg/voice"
)

var transcribeCommand = &cli.Command{
	Name:  "transcribe",
	Usage: "record an audio file through the voice session and print the extracted fields",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "file", Usage: "audio file to replay as microphone input", Required: true},
		&cli.IntFlag{Name: "chunk-size", Usage: "bytes delivered per chunk", Value: 32 * 1024},
	},
	Action: runTranscribe,
}

var extractCommand = &cli.Command{
	Name:      "extract",
	Usage:     "extract profile fields from a transcript",
	ArgsUsage: "TEXT",
	Action:    runExtract,
}

func runTranscribe(c *cli.Context) error {
	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	mic := &voice.FileMicrophone{Path: c.String("file"), ChunkSize: c.Int("chunk-size")}
	session := voice.NewSession(mic, newProcessor(cfg, pipeline), log)

	if err := session.Start(c.Context); err != nil {
		return err
	}
	result, err := session.Stop(c.Context)
	if err != nil {
		return err
	}
	return printJSON(c, result)
}

func runExtract(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return errors.New("extract: TEXT is required")
	}
	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	return printJSON(c, pipeline.Extract(c.Context, text))
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
