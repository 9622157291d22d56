package scan

import "fmt"

// Services that send a banner immediately after accepting a connection.
var knownServices = map[int]string{
	21:   "FTP",
	22:   "SSH",
	23:   "Telnet",
	25:   "SMTP",
	110:  "POP3",
	143:  "IMAP",
	3306: "MySQL",
	5900: "VNC",
	6379: "Redis",
}

// DescribeService names the service conventionally found on port, falling
// back to "port-N" for ports it does not know.
func DescribeService(port int) string {
	if s, ok := knownServices[port]; ok {
		return s
	}
	return fmt.Sprintf("port-%d", port)
}
