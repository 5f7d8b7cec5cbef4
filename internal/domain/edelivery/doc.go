// Package edelivery defines message exchange with an e-Delivery access point.
package edelivery
