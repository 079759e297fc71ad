package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"doc-analytics-be/internal/constant"
	"doc-analytics-be/internal/tcp"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: analyze -action ACTION -user USER_ID [flags]

Actions: CLUSTER, TOPICS, RECOMMEND, VISUALIZE,
         GET_CLUSTERS, GET_TOPICS, GET_RECOMMENDATIONS, GET_VISUALIZATION,
         PING, STATUS

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	var (
		addr    = flag.String("addr", "localhost:5555", "analytics service address")
		action  = flag.String("action", "PING", "action to send")
		userId  = flag.String("user", "", "user id")
		docId   = flag.String("document", "", "document id (RECOMMEND / GET_RECOMMENDATIONS)")
		topK    = flag.Int("top-k", 0, "number of recommendations (0 = service default)")
		minSize = flag.Int("min-cluster-size", 0, "minimum cluster size (0 = service default)")
		timeout = flag.Duration("timeout", 30*time.Second, "per-request timeout")
		retries = flag.Int("retries", 3, "retries on connection failures")
	)
	flag.Usage = usage
	flag.Parse()

	act := constant.Action(strings.ToUpper(*action))

	data := map[string]interface{}{}
	if *userId != "" {
		data["user_id"] = *userId
	}
	if *docId != "" {
		data["document_id"] = *docId
	}
	if *topK > 0 {
		data["top_k"] = *topK
	}
	if *minSize > 0 {
		data["min_cluster_size"] = *minSize
	}

	client := tcp.NewClient(*addr, *timeout, *retries)
	defer client.Close()

	color.Cyan("→ %s %s", act, *addr)

	start := time.Now()
	resp, err := client.Send(context.Background(), act, data)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	if resp.IsError() {
		color.Red("Error: %s", resp.ErrorMessage())
		os.Exit(2)
	}

	color.Green("OK (%s)", time.Since(start).Round(time.Millisecond))
	prettyPrint(resp.Result)
}
