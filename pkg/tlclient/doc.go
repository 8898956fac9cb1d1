// Package tlclient wires configuration, transport and resource clients into a
// ready-to-use twelvelabs.Client.
//
//	cli, err := tlclient.New(&twelvelabs.Config{
//	  APIKey:    os.Getenv("TWELVELABS_API_KEY"),
//	  RetryMax:  3,
//	  RateLimit: 5,
//	})
//
// Each call to New returns an independent client; there is no package-level
// default instance.
package tlclient
