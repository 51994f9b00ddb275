package collection

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
)

// http utils to deal with the remote price service

// diskCache implements a simple disk cache for HTTP responses. The cache key
// includes today's date, so entries expire daily, matching the granularity of
// the price feed.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// dailyClient returns a client whose responses are cached on disk until the
// end of the day.
func dailyClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("%w: cannot http GET %v/%v: %v",
			ErrDependencyUnavailable, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
