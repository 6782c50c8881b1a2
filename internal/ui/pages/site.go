package pages

import (
	"context"
	"fmt"

	"github.com/pixelplaque/pixelplaque/internal/ctxkeys"
)

type offering struct {
	Title   string
	Summary string
	Detail  string
}

var offerings = []offering{
	{"Web Design", "Stunning, user-centric designs that captivate and convert.",
		"Create stunning, user-centric designs that captivate audiences and drive engagement. Our designs blend aesthetics with functionality."},
	{"Web Development", "Cutting-edge development with modern technologies.",
		"Build robust, scalable web applications. From simple landing pages to complex web platforms, we deliver solutions that perform."},
	{"Graphic Design", "Visual identity that makes your brand unforgettable.",
		"Craft memorable visual identities that make your brand stand out, from logos to complete brand guidelines."},
	{"Content Generation", "Compelling content that resonates with your audience.",
		"Develop content that resonates with your audience and drives action, combining creativity with data-driven insights."},
	{"E-commerce Setup", "Full-featured online stores that drive sales.",
		"Launch online stores that drive sales and provide seamless shopping experiences. We handle everything from setup to optimization."},
	{"SaaS Solutions", "Scalable software solutions for modern businesses.",
		"Develop SaaS platforms that solve real business problems. From MVP to enterprise-grade, we build software that grows with you."},
}

var processSteps = []struct {
	Step        string
	Title       string
	Description string
}{
	{"01", "Discovery", "We dive deep into your business, goals and challenges to understand your needs."},
	{"02", "Strategy", "We develop a strategy and roadmap tailored to your objectives."},
	{"03", "Design", "Our team creates visuals and prototypes that bring your vision to life."},
	{"04", "Development", "We build robust, scalable solutions."},
	{"05", "Launch", "We deploy your project and ensure a smooth go-live."},
	{"06", "Support", "We provide ongoing maintenance and optimization."},
}

var values = []struct {
	Title       string
	Description string
}{
	{"Innovation First", "We push boundaries and embrace new technologies to deliver next-generation solutions."},
	{"Client-Centric", "Your success is our mission. We collaborate closely to understand and exceed your expectations."},
	{"Results-Driven", "We focus on measurable outcomes that drive your business growth."},
	{"Excellence", "Quality is non-negotiable. We deliver work that stands out."},
}

var stats = []struct{ Value, Label string }{
	{"200+", "Projects Completed"},
	{"150+", "Happy Clients"},
	{"50+", "Team Members"},
	{"5+", "Years Experience"},
}

// ContactValues refills the form after a failed submission
type ContactValues struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func tagline(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppTagline != "" {
		return cfg.AppTagline
	}
	return "Digital experiences that glow"
}

func supportEmail(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.SupportEmail
	}
	return ""
}

func showingCount(n int) string {
	if n == 1 {
		return "Showing 1 project"
	}
	return fmt.Sprintf("Showing %d projects", n)
}
