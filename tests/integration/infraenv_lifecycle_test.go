//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/config"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/consts"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/infraenv"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/waiting"
)

var _ = Describe("InfraEnv lifecycle", func() {
	var (
		ctx     context.Context
		fake    *fakeAssistedService
		client  *service.RealClient
		cfg     *config.InfraEnvConfig
		entity  *infraenv.InfraEnv
		workDir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = newFakeAssistedService()
		DeferCleanup(fake.Close)

		workDir = GinkgoT().TempDir()
		client = service.NewRealClient(fake.URL())
		cfg = &config.InfraEnvConfig{
			EntityName:       "integration-env",
			PullSecret:       `{"auths":{}}`,
			SSHPublicKey:     "ssh-rsa AAAA test@host",
			OpenshiftVersion: "4.14",
			ISOImageType:     consts.ImageTypeFullISO,
			ISODownloadPath:  filepath.Join(workDir, "images", "discovery.iso"),
			NodesCount:       2,
		}
		entity = infraenv.New(client, cfg, nil, logr.Discard())
	})

	It("registers, downloads the image and deregisters", func() {
		infraEnvID, err := entity.Register(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(infraEnvID).NotTo(BeEmpty())
		Expect(entity.ID()).To(Equal(infraEnvID))

		details, err := entity.GetDetails(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(details.Name).To(Equal("integration-env"))
		Expect(details.DownloadURL).NotTo(BeEmpty())

		isoPath, err := entity.DownloadImage(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(isoPath).To(Equal(cfg.ISODownloadPath))
		data, err := os.ReadFile(isoPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte("fake-discovery-iso")))

		Expect(entity.Deregister(ctx, true)).To(Succeed())
		Expect(entity.ID()).To(BeEmpty())

		_, err = client.GetInfraEnv(ctx, infraEnvID)
		Expect(service.IsNotFound(err)).To(BeTrue())
	})

	It("waits for hosts to reach discovery statuses", func() {
		infraEnvID, err := entity.Register(ctx)
		Expect(err).NotTo(HaveOccurred())

		h1 := fake.addHost(infraEnvID, "discovering-unbound")
		h2 := fake.addHost(infraEnvID, consts.HostStatusKnownUnbound)

		// Flip the lagging host to known-unbound while the entity polls.
		go func() {
			defer GinkgoRecover()
			time.Sleep(50 * time.Millisecond)
			fake.setHostStatus(infraEnvID, h1, consts.HostStatusKnownUnbound)
		}()

		err = waiting.UntilAllHostsInStatuses(ctx, client, infraEnvID, 2,
			[]string{consts.HostStatusKnownUnbound},
			waiting.WithTimeout(5*time.Second), waiting.WithInterval(20*time.Millisecond))
		Expect(err).NotTo(HaveOccurred())

		hosts, err := client.ListHosts(ctx, infraEnvID)
		Expect(err).NotTo(HaveOccurred())
		Expect(hosts).To(HaveLen(2))
		Expect(h2).NotTo(BeEmpty())
	})

	It("reports a timeout when hosts never reach the expected status", func() {
		infraEnvID, err := entity.Register(ctx)
		Expect(err).NotTo(HaveOccurred())
		fake.addHost(infraEnvID, consts.HostStatusInsufficientUnbound)

		err = waiting.UntilAllHostsInStatuses(ctx, client, infraEnvID, 1,
			[]string{consts.HostStatusKnownUnbound},
			waiting.WithTimeout(100*time.Millisecond), waiting.WithInterval(20*time.Millisecond))

		var timeoutErr *waiting.TimeoutError
		Expect(errors.As(err, &timeoutErr)).To(BeTrue())
		Expect(timeoutErr.Expected).To(Equal(1))
	})

	It("updates and deregisters hosts", func() {
		infraEnvID, err := entity.Register(ctx)
		Expect(err).NotTo(HaveOccurred())
		hostID := fake.addHost(infraEnvID, consts.HostStatusKnownUnbound)

		role := "master"
		name := "master-0"
		Expect(entity.UpdateHost(ctx, hostID, &service.HostUpdateParams{
			HostRole: &role,
			HostName: &name,
		})).To(Succeed())

		hosts, err := client.ListHosts(ctx, infraEnvID)
		Expect(err).NotTo(HaveOccurred())
		Expect(hosts[0].Role).To(Equal("master"))
		Expect(hosts[0].RequestedHostname).To(Equal("master-0"))

		Expect(entity.DeleteHost(ctx, hostID)).To(Succeed())
		hosts, err = client.ListHosts(ctx, infraEnvID)
		Expect(err).NotTo(HaveOccurred())
		Expect(hosts).To(BeEmpty())
	})

	It("round-trips the discovery ignition override", func() {
		_, err := entity.Register(ctx)
		Expect(err).NotTo(HaveOccurred())

		original, err := entity.GetDiscoveryIgnition(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(original).To(ContainSubstring("3.1.0"))

		override := `{"ignition": {"version": "3.2.0"}}`
		Expect(entity.PatchDiscoveryIgnition(ctx, override)).To(Succeed())

		patched, err := entity.GetDiscoveryIgnition(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(patched).To(Equal(override))
	})

	It("downloads named infra-env files", func() {
		_, err := entity.Register(ctx)
		Expect(err).NotTo(HaveOccurred())

		scriptPath := filepath.Join(workDir, "files", "ipxe-script")
		Expect(entity.DownloadFile(ctx, "ipxe-script", scriptPath)).To(Succeed())

		data, err := os.ReadFile(scriptPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(HavePrefix("#!ipxe"))
	})

	It("refuses to deregister while hosts remain registered", func() {
		infraEnvID, err := entity.Register(ctx)
		Expect(err).NotTo(HaveOccurred())
		fake.addHost(infraEnvID, consts.HostStatusKnownUnbound)

		err = entity.Deregister(ctx, false)
		Expect(err).To(HaveOccurred())
		Expect(entity.ID()).To(Equal(infraEnvID), "the handle survives a failed cleanup")

		Expect(entity.Deregister(ctx, true)).To(Succeed())
		Expect(entity.ID()).To(BeEmpty())
	})
})
