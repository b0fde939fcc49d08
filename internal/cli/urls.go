package cli

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

// devURLs are the addresses the dev server is reachable at.
type devURLs struct {
	Local string
	LAN   string
}

func newURLsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "urls",
		Short: "Print where the dev server serves the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			s := cfg.BuildSettings()
			urls, err := prepareURLs(s.DevHost, s.DevPort, lanAddress())
			if err != nil {
				return err
			}
			printInstructions(a.stdout, filepath.Base(cfg.WorkDir), urls)
			return nil
		},
	}
}

// prepareURLs derives the local and LAN URLs of the dev server. The LAN
// URL is only set when host is a loopback or unspecified address and lan
// is known.
func prepareURLs(host string, port int, lan net.IP) (devURLs, error) {
	u, err := url.Parse(host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return devURLs{}, fmt.Errorf("invalid dev server host %q", host)
	}
	hostname := u.Hostname()
	u.Host = net.JoinHostPort(hostname, strconv.Itoa(port))
	u.Path = "/"

	urls := devURLs{Local: u.String()}
	if lan == nil || !isLocalHostname(hostname) {
		return urls, nil
	}
	u.Host = net.JoinHostPort(lan.String(), strconv.Itoa(port))
	urls.LAN = u.String()
	return urls, nil
}

func isLocalHostname(h string) bool {
	if h == "localhost" {
		return true
	}
	ip := net.ParseIP(h)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

// lanAddress returns the first private IPv4 address of this machine.
func lanAddress() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip := ipnet.IP.To4(); ip != nil && ip.IsPrivate() {
			return ip
		}
	}
	return nil
}

func printInstructions(w io.Writer, appName string, urls devURLs) {
	fmt.Fprintf(w, "You can now view %s in the browser.\n\n", boldColor.Sprint(appName))
	if urls.LAN != "" {
		fmt.Fprintf(w, "  %s            %s\n", boldColor.Sprint("Local:"), urls.Local)
		fmt.Fprintf(w, "  %s  %s\n", boldColor.Sprint("On Your Network:"), urls.LAN)
	} else {
		fmt.Fprintf(w, "  %s\n", urls.Local)
	}
	fmt.Fprintf(w, "\nTo create a production build, use %s.\n\n", commandColor.Sprint("art build"))
}
