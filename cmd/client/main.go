// Command client is a thin flag-driven TCP client for internal/server:
// it encodes a PlaceOrder or LogBook request and, for two seconds,
// prints the size of each report the server writes back.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"time"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "address of the gavel server")
	action := flag.String("action", "place", "action to perform: ['place', 'log']")
	sideStr := flag.String("side", "buy", "order side: 'buy' or 'sell'")
	typeStr := flag.String("type", "limit", "order type: 'limit', 'ioc', or 'fok'")
	price := flag.Uint64("price", 100, "limit price, in ticks")
	size := flag.Uint64("size", 10, "order size")
	userID := flag.Uint64("user", 1, "user id placing the order")
	flag.Parse()

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *serverAddr, err)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *serverAddr)

	go readReports(conn)

	switch strings.ToLower(*action) {
	case "place":
		if err := sendPlaceOrder(conn, *sideStr, *typeStr, *price, *size, *userID); err != nil {
			log.Fatalf("failed to send order: %v", err)
		}
		fmt.Printf("-> sent %s %s order: %d @ %d (user %d)\n", strings.ToUpper(*sideStr), strings.ToUpper(*typeStr), *size, *price, *userID)
	case "log":
		if err := sendLogBook(conn); err != nil {
			log.Fatalf("failed to send log request: %v", err)
		}
		fmt.Println("-> sent log request")
	default:
		log.Fatalf("unknown action: %s", *action)
	}

	fmt.Println("listening for reports for 2s...")
	time.Sleep(2 * time.Second)
}

func sendPlaceOrder(conn net.Conn, sideStr, typeStr string, price, size, userID uint64) error {
	side, err := encodeSide(sideStr)
	if err != nil {
		return err
	}
	reqType, err := encodeType(typeStr)
	if err != nil {
		return err
	}

	buf := make([]byte, 1+1+8+8+8+1)
	buf[0] = 0 // PlaceOrder
	buf[1] = side
	binary.BigEndian.PutUint64(buf[2:10], price)
	binary.BigEndian.PutUint64(buf[10:18], size)
	binary.BigEndian.PutUint64(buf[18:26], userID)
	buf[26] = reqType

	_, err = conn.Write(buf)
	return err
}

func sendLogBook(conn net.Conn) error {
	_, err := conn.Write([]byte{1}) // LogBook
	return err
}

func encodeSide(s string) (byte, error) {
	switch strings.ToLower(s) {
	case "buy":
		return 0, nil
	case "sell":
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func encodeType(s string) (byte, error) {
	switch strings.ToLower(s) {
	case "limit":
		return 0, nil
	case "ioc":
		return 1, nil
	case "fok":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown type %q", s)
	}
}

// readReports drains whatever the server sends back, printing the byte
// count of each read, until the connection closes.
func readReports(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "connection lost: %v\n", err)
			}
			return
		}
		fmt.Printf("<- received %d byte report\n", n)
	}
}
