package browser

import (
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Playwright is the production Browser backed by a Chromium instance. One
// launched browser serves the whole process; each job gets its own isolated
// context/page pair via OpenSession.
type Playwright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch installs the driver if needed and starts a Chromium instance
func Launch(headless bool) (*Playwright, error) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return nil, fmt.Errorf("Launch: install driver: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("Launch: %w", err)
	}

	chromium, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("Launch: %w", err)
	}

	log.Println("✅ Chromium launched")
	return &Playwright{pw: pw, browser: chromium}, nil
}

// OpenSession creates a fresh browser context and page
func (b *Playwright) OpenSession() (Session, error) {
	ctx, err := b.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenSession: %w", err)
	}

	page, err := ctx.NewPage()
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("OpenSession: %w", err)
	}

	return &pwSession{ctx: ctx, page: page}, nil
}

// Close shuts down the Chromium instance and the driver
func (b *Playwright) Close() error {
	log.Println("📡 Closing browser...")
	if err := b.browser.Close(); err != nil {
		return err
	}
	return b.pw.Stop()
}

type pwSession struct {
	ctx  playwright.BrowserContext
	page playwright.Page
}

func (s *pwSession) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("Navigate %s: %w", url, err)
	}
	return nil
}

func (s *pwSession) Find(selector string) (Element, error) {
	loc := s.page.Locator(selector)
	count, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	return &pwElement{loc: loc.First()}, nil
}

func (s *pwSession) FindAll(selector string) ([]Element, error) {
	all, err := s.page.Locator(selector).All()
	if err != nil {
		return nil, err
	}
	elements := make([]Element, len(all))
	for i, loc := range all {
		elements[i] = &pwElement{loc: loc}
	}
	return elements, nil
}

func (s *pwSession) WaitFor(selector string, timeout time.Duration) error {
	return s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *pwSession) Close() error {
	return s.ctx.Close()
}

type pwElement struct {
	loc playwright.Locator
}

func (e *pwElement) Text() (string, error) {
	return e.loc.InnerText()
}

func (e *pwElement) Attribute(name string) (string, error) {
	value, err := e.loc.GetAttribute(name)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (e *pwElement) Find(selector string) (Element, error) {
	loc := e.loc.Locator(selector)
	count, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	return &pwElement{loc: loc.First()}, nil
}

func (e *pwElement) Click() error {
	return e.loc.Click()
}
