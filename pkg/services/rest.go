package services

import "kafkaperf/pkg/app"

// RestProxy is the Kafka REST proxy the REST producer/consumer tools target
type RestProxy struct {
	url string
}

func NewRestProxy(url string) *RestProxy {
	return &RestProxy{url: url}
}

func RestProxyFromConfig() *RestProxy {
	return NewRestProxy(app.Config.RestProxy.URL)
}

func (r *RestProxy) URL() string {
	return r.url
}
